// cmd/rsd/main.go
package main

import (
	"rsd/internal/app"
	"rsd/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
