package templates

import (
	"fmt"
	"strings"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

// StarterContent returns the seed content for a newly created file based on
// its language. Filenames feed into the markdown and python starters.
func StarterContent(filename string) string {
	switch models.LanguageForPath(filename) {
	case models.LangHTML:
		return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Document</title>
</head>
<body>
    <h1>Hello World!</h1>
</body>
</html>`
	case models.LangCSS:
		return `/* CSS styles */

body {
    font-family: Arial, sans-serif;
    margin: 0;
    padding: 20px;
}

h1 {
    color: #333;
}`
	case models.LangJavaScript:
		return `// JavaScript code

console.log('Hello, World!');

document.addEventListener('DOMContentLoaded', function() {
    // Your code here
});`
	case models.LangJSON:
		return `{
    "name": "My Project",
    "version": "1.0.0",
    "description": "A new project"
}`
	case models.LangMarkdown:
		title := strings.TrimSuffix(filename, ".md")
		return fmt.Sprintf(`# %s

This is a markdown file.

## Features

- Feature 1
- Feature 2
- Feature 3`, title)
	case models.LangPython:
		return fmt.Sprintf(`#!/usr/bin/env python3
"""
%s - A Python script
"""

def main():
    print("Hello, World!")

if __name__ == "__main__":
    main()`, filename)
	default:
		return "New text file"
	}
}
