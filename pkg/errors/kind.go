package errors

import (
	"context"
	"errors"
)

// Kind groups error codes into the classes a caller reacts to.
type Kind int

const (
	KindInternal Kind = iota
	KindConfig
	KindRule
	KindPath
	KindLocked
	KindInterrupted
	KindFile
)

// Process exit statuses
const (
	ExitOK          = 0
	ExitInternal    = 1
	ExitDomain      = 2
	ExitInterrupted = 130
)

var kindByCode = map[ErrorCode]Kind{
	ErrConfigLoad:   KindConfig,
	ErrConfigParse:  KindConfig,
	ErrConfigValid:  KindConfig,
	ErrRuleInvalid:  KindRule,
	ErrRuleLoad:     KindRule,
	ErrPathNotFound: KindPath,
	ErrPathNotDir:   KindPath,
	ErrRunLocked:    KindLocked,
	ErrInterrupted:  KindInterrupted,
	ErrFileMove:     KindFile,
	ErrDirCreate:    KindFile,
	ErrDirRemove:    KindFile,
}

// KindOf classifies err. Plain context cancellation counts as an interrupt.
func KindOf(err error) Kind {
	if kind, ok := kindByCode[GetErrorCode(err)]; ok {
		return kind
	}
	if errors.Is(err, context.Canceled) {
		return KindInterrupted
	}
	return KindInternal
}

// IsDomain reports whether err is a known, user-facing failure
// (bad configuration, rule source or path, or a held run lock).
func IsDomain(err error) bool {
	switch KindOf(err) {
	case KindConfig, KindRule, KindPath, KindLocked:
		return true
	}
	return false
}

// ExitCode maps an error returned by a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if IsDomain(err) {
		return ExitDomain
	}
	if KindOf(err) == KindInterrupted {
		return ExitInterrupted
	}
	return ExitInternal
}
