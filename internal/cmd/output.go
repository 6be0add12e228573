package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"arbor/internal/domain"
)

// emit prints the result envelope for a command as indented JSON on
// stdout. The original error is returned unchanged so failed commands
// still exit non-zero.
func emit(result any, err error) error {
	var envelope domain.Envelope
	if err != nil {
		envelope = domain.Fail(err)
	} else {
		envelope = domain.OK(result)
	}

	data, marshalErr := json.MarshalIndent(envelope, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("failed to encode result: %w", marshalErr)
	}
	fmt.Fprintln(os.Stdout, string(data))

	return err
}
