package main

import (
	"os"

	"wanderlust/backend/internal/app"
)

func main() {
	os.Exit(app.Run())
}
