// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolutionerrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	PackageNotFound = "PACKAGE_NOT_FOUND"
	UnknownError    = "UNKNOWN_ERROR"
)

var ErrPackageNotFound = errors.New("package not found")

type ResolutionError struct {
	Code    string
	Package string
	Cause   error
}

func (r *ResolutionError) Error() string {
	msg := r.Code
	if r.Package != "" {
		msg += fmt.Sprintf(" (%s)", r.Package)
	}
	if r.Cause != nil {
		msg += ": " + r.Cause.Error()
	}
	return msg
}

func (r *ResolutionError) fields() map[string]interface{} {
	var causeStr string
	if r.Cause != nil {
		causeStr = r.Cause.Error()
	}
	return map[string]interface{}{
		"code":    r.Code,
		"package": r.Package,
		"cause":   causeStr,
	}
}

func (r *ResolutionError) MarshalYAML() (interface{}, error) {
	return r.fields(), nil
}

func (r *ResolutionError) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields())
}

func (r *ResolutionError) Unwrap() error {
	return r.Cause
}

var _ error = (*ResolutionError)(nil)

// NewPackageNotFoundError reports a package missing from every searched location.
// searched is folded into the cause so the message says where we looked.
func NewPackageNotFoundError(name string, searched []string) *ResolutionError {
	cause := ErrPackageNotFound
	if len(searched) > 0 {
		cause = fmt.Errorf("%w, searched %q", ErrPackageNotFound, searched)
	}
	return &ResolutionError{
		Code:    PackageNotFound,
		Package: name,
		Cause:   cause,
	}
}

func NewUnknownError(pkg string, cause error) *ResolutionError {
	return &ResolutionError{
		Code:    UnknownError,
		Package: pkg,
		Cause:   cause,
	}
}

// IsPackageNotFound reports whether err is a not-found error, for any package
func IsPackageNotFound(err error) bool {
	return errors.Is(err, ErrPackageNotFound)
}

// Standardize turns any lookup error for pkg into a *ResolutionError,
// keeping one that's already in the chain
func Standardize(pkg string, err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr
	}

	return NewUnknownError(pkg, err)
}
