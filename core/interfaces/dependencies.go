// ABOUTME: Dependencies container for injecting infrastructure into core services
// ABOUTME: Keeps the article pipeline decoupled from concrete cache, HTTP, and logging implementations

package interfaces

// Dependencies bundles the infrastructure the article pipeline needs.
// Services receive this at construction time so tests can swap in fakes.
type Dependencies struct {
	Cache      Cache
	HTTPClient HTTPClient
	Logger     Logger
}
