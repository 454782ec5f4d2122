package anthropic

// BuildCachedSystemBlocks returns a single system block with a cache
// breakpoint. The classifier instructions are identical for every chunk of
// a run, so later chunks read them from the prompt cache.
func BuildCachedSystemBlocks(text string, ttl string) []SystemBlock {
	if text == "" {
		return nil
	}
	if ttl == "" {
		ttl = "5m"
	}
	return []SystemBlock{{Text: text, CacheControl: &CacheControl{TTL: ttl}}}
}
