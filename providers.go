package main

// Register all built-in providers.
import (
	_ "github.com/Mayank-jangid007/CouseHub/pkg/providers/articles"
	_ "github.com/Mayank-jangid007/CouseHub/pkg/providers/github"
	_ "github.com/Mayank-jangid007/CouseHub/pkg/providers/notes"
	_ "github.com/Mayank-jangid007/CouseHub/pkg/providers/roadmaps"
	_ "github.com/Mayank-jangid007/CouseHub/pkg/providers/youtube"
)
