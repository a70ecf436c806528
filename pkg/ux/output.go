// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var Logger *UserLog

// UserLog writes command output for the user and mirrors it to the log file.
type UserLog struct {
	log    *zap.Logger
	writer io.Writer
}

// NewUserLog replaces the global Logger.
func NewUserLog(log *zap.Logger, userwriter io.Writer) {
	Logger = New(log, userwriter)
}

func New(log *zap.Logger, userwriter io.Writer) *UserLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserLog{
		log:    log,
		writer: userwriter,
	}
}

// PrintToUser prints msg to the user writer and records it at debug level
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Debug(formattedMsg)
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✗ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✓ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintError prints a visible error message with ERROR prefix to the user
func (ul *UserLog) PrintError(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintf(ul.writer, "\nERROR: %s\n\n", formattedMsg)
	ul.log.Error(formattedMsg)
}

// PrintJSON pretty prints v, used by dry runs and queries.
func (ul *UserLog) PrintJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(ul.writer, string(out))
	return nil
}

// PrintTxResult prints the gas and hash of a committed transaction.
func (ul *UserLog) PrintTxResult(gasWanted, gasUsed int64, txHash string, height int64) {
	ul.PrintToUser(
		"gas wanted: %s, gas used: %s",
		ConvertToStringWithThousandSeparator(uint64(max(gasWanted, 0))),
		ConvertToStringWithThousandSeparator(uint64(max(gasUsed, 0))),
	)
	ul.PrintToUser("tx hash: %s", txHash)
	ul.log.Info("tx committed",
		zap.String("hash", txHash),
		zap.Int64("height", height),
		zap.Int64("gasWanted", gasWanted),
		zap.Int64("gasUsed", gasUsed),
	)
}

// StepTracker tracks progress of multi-step operations with elapsed time
type StepTracker struct {
	stepStart time.Time
	stepName  string
	ul        *UserLog
}

func NewStepTracker(ul *UserLog) *StepTracker {
	return &StepTracker{ul: ul}
}

// Start begins tracking a new step
func (st *StepTracker) Start(stepName string) {
	st.stepStart = time.Now()
	st.stepName = stepName
	st.ul.PrintToUser("%s...", stepName)
}

// Elapsed returns the elapsed time for the current step
func (st *StepTracker) Elapsed() time.Duration {
	return time.Since(st.stepStart)
}

// Complete marks the step as done with success
func (st *StepTracker) Complete(suffix string) {
	elapsed := st.Elapsed()
	if suffix != "" {
		st.ul.GreenCheckmarkToUser("%s (%.1fs) - %s", st.stepName, elapsed.Seconds(), suffix)
	} else {
		st.ul.GreenCheckmarkToUser("%s (%.1fs)", st.stepName, elapsed.Seconds())
	}
}

// Failed marks the step as failed with an error
func (st *StepTracker) Failed(reason string) {
	elapsed := st.Elapsed()
	st.ul.RedXToUser("%s (%.1fs) - FAILED: %s", st.stepName, elapsed.Seconds(), reason)
}

func ConvertToStringWithThousandSeparator(input uint64) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("%d", input)
	return strings.ReplaceAll(s, ",", "_")
}
