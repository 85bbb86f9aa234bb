package main

import "staffsync/internal/app/server"

func main() {
	server.Run()
}
