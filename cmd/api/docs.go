package main

// @title           RMS API
// @version         1.0
// @description     API de gestão de varejo: catálogo, clientes, vendas e relatórios

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
