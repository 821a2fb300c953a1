package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/bookslib/docs.go -o docs`.
//
// @title           bookslib API
// @version         1.0
// @description     Controller for the books library registry: forms, operations and the error banner.
//
// @contact.name   bookslib maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
