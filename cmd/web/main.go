package main

import "iblaze_backend/internal/app"

func main() {
	app.Run()
}
