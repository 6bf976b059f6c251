/*
 * errors.go, part of chaingen.
 *
 * Copyright 2025 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chaingen

import (
	"errors"
	"fmt"
	"strings"
)

//The sentinels below are what callers should check against, with errors.Is.
//Every *Error returned by this package unwraps to one of them, or, for cancelled
//requests, to the context error.
var (
	//ErrInvalidInput is returned when the request is rejected before any placement:
	//negative or non-finite radii, a window outside the size list, or a bond rule giving
	//a non-positive length.
	ErrInvalidInput = errors.New("invalid input")
	//ErrUnsatisfiableGeometry is returned when the backtrack budget is exhausted.
	ErrUnsatisfiableGeometry = errors.New("unsatisfiable geometry")
	//ErrNumericDegenerate marks a non-finite or zero-length sampled direction.
	//The builder never returns it, it only consumes a local retry.
	ErrNumericDegenerate = errors.New("numeric degenerate")
)

//Decorator is implemented by the errors in chaingen and its sub-packages.
//The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
//If passed an empty string, it just returns the current decoration.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

//Error is the error type returned by the chain generator.
type Error struct {
	message  string
	kind     error //one of the sentinels, or a context error.
	deco     *[]string
	critical bool
}

func newError(kind error, critical bool, caller, format string, a ...any) Error {
	deco := []string{caller}
	return Error{message: fmt.Sprintf(format, a...), kind: kind, deco: &deco, critical: critical}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	d := ""
	if err.deco != nil && len(*err.deco) > 0 {
		d = " (" + strings.Join(*err.deco, " <- ") + ")"
	}
	return fmt.Sprintf("chaingen: %v: %s%s", err.kind, err.message, d)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if err.deco == nil {
		return nil
	}
	if dec != "" {
		*err.deco = append(*err.deco, dec)
	}
	return *err.deco
}

//Critical returns true if the error leaves no usable result. Only the numeric
//degeneracies are non-critical.
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the sentinel (or context error) for the error.
func (err Error) Unwrap() error { return err.kind }

//errDecorate decorates err with the caller's name, if err implements Decorator,
//and returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
