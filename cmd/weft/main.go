package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yonutiyo/weft/internal/server"
	"github.com/yonutiyo/weft/internal/version"
)

func main() {
	// A bare invocation serves; leading flags belong to serve too.
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		server.Run(context.Background(), args)
	case "version":
		version.Run()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: weft [command] [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve          Serve the directory containing the binary (default)")
	fmt.Println("  version        Show the tool version")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags for serve:")
	fmt.Println("  -reload        Enable live reload via /events (default true)")
	fmt.Println("  -compress      Enable response compression")
}
