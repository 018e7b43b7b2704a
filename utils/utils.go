package utils

import (
	"io"

	"github.com/sirupsen/logrus"
)

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

func Filter[A any](input []A, filter func(A) bool) []A {
	output := make([]A, 0)
	for _, item := range input {
		if filter(item) {
			output = append(output, item)
		}
	}
	return output
}

func Any[A any](input []A, predicate func(A) bool) bool {
	for _, item := range input {
		if predicate(item) {
			return true
		}
	}
	return false
}

func Contains[A comparable](input []A, item A) bool {
	for _, i := range input {
		if i == item {
			return true
		}
	}
	return false
}

// Uniques keeps the first occurrence of every item and preserves order.
func Uniques[A comparable](input []A) []A {
	seen := make(map[A]bool, len(input))
	output := make([]A, 0, len(input))
	for _, item := range input {
		if seen[item] {
			continue
		}
		seen[item] = true
		output = append(output, item)
	}
	return output
}

// Closer returns a func for defer that logs a failing Close.
func Closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logrus.WithError(err).Warn("close failed")
		}
	}
}
