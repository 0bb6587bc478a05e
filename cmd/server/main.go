package main

import (
	"os"

	"viz-ai/backend/internal/app"
)

// @title           Viz AI API
// @version         1.0
// @description     Chat with uploaded data and get validated, themed chart configurations from a local Ollama model.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
