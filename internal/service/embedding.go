package service

import (
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a small deterministic embedding for the given text.
// It captures length, vowel and consonant counts, normalised to unit length.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	vec := []float32{float32(len(text)), vowels, consonants}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for i := range vec {
			vec[i] /= n
		}
	}
	return pgvector.NewVector(vec)
}

func recipeEmbedding(title, description string) pgvector.Vector {
	return GenerateEmbedding(title + " " + description)
}
