// Package llm provides the text-generation transport used to turn free-form
// transaction phrases into structured JSON. It supports OpenAI and Anthropic
// providers behind a single Client interface.
package llm
