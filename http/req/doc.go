/*
Package req parses the payloads of HTTP requests into structs.

It supports JSON-encoded bodies, query parameters and route variables.
In each case, req expects a pointer to a struct whose tags match payload keys to fields
(json or schema tags) and declare rules for the data (validate tags).

Decoding and validation failures are translated into the sentinel errors of package accounts,
with rule violations collected into ValidationErrors.
*/
package req
