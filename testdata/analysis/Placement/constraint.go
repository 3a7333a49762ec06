package testdata

import _ "github.com/sublee/eqgen" // want `file must have "//go:build eqgen" constraint when importing eqgen`
