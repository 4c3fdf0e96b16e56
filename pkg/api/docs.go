// Package api provides the REST API for querying the marketplace projection
// @title Aegis Indexer API
// @version 1.0
// @description REST API for querying jobs, disputes, templates and protocol statistics projected from the Aegis marketplace contracts
// @contact.name API Support
// @contact.url https://github.com/aegis-protocol/aegis-indexer
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
