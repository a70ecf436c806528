// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

func ValidateURLFormat(input string) error {
	if input == "" {
		return errors.New("URL cannot be empty")
	}
	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme == "" {
		return errors.New("URL must have a scheme (e.g., http:// or https://)")
	}
	return nil
}

// ValidateJSON accepts a single JSON object.
func ValidateJSON(input string) error {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "{") {
		return errors.New("msg must be a JSON object")
	}
	if !json.Valid([]byte(input)) {
		return errors.New("invalid JSON")
	}
	return nil
}

func validateUint64(input string) error {
	if _, err := strconv.ParseUint(input, 10, 64); err != nil {
		return errors.New("must be a non negative integer")
	}
	return nil
}

// ValidatePositiveFloat rejects zero and negatives.
func ValidatePositiveFloat(val float64) error {
	if val <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

// ValidateNonNegativeFloat rejects negatives.
func ValidateNonNegativeFloat(val float64) error {
	if val < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}
