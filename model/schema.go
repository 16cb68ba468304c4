package model

import (
	_ "embed"
)

// Schema creates the companies, jobs and users tables.
//
//go:embed schema.sql
var Schema string
