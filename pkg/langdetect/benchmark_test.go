package langdetect

import (
	"testing"
)

func BenchmarkGuess(b *testing.B) {
	samples := map[string]string{
		"go":     "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}",
		"python": "def hello():\n    print(\"hi\")\n\nif __name__ == \"__main__\":\n    hello()",
		"prose":  "A paragraph of prose that matches no pattern at all.",
	}

	for name, code := range samples {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				Guess(code)
			}
		})
	}
}
