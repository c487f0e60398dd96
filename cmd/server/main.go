package main

import "filemanager/internal/app"

func main() {
	app.Run()
}
