// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Stores return
// nil (not an error) for absent rows; translating absence into business
// errors is the caller's concern.
package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// inClause builds a "($n,$n+1,...)" placeholder list for len(ids) values
// starting at placeholder number start, and the matching argument slice.
func inClause(start int, ids []uuid.UUID) (string, []any) {
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}
	return "(" + strings.Join(ph, ",") + ")", args
}
