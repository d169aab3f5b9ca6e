// @title           Rastaka API
// @version         1.0
// @description     API студии Rastaka: клиенты, работы, портфолио, SEO и заявки (документация Swagger).
// @contact.name    Rastaka
// @contact.email   hello@rastaka.com
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "rastaka_backend/internal/app"

func main() {
	app.Run()
}
