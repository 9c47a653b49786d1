// Package explain produces natural-language explanations of SQL queries by
// calling an external text-generation service.
package explain

import "context"

type Request struct {
	SQL string `json:"sql"`
}

type Result struct {
	Explanation string `json:"explanation"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
}

type Explainer interface {
	Explain(ctx context.Context, req Request) (Result, error)
}
