package main

import "github.com/wingden/loyalty-gateway/internal/service"

func main() {
	service.RunServer()
}
