// Package httputil provides the on-disk cache and retry helpers behind the
// page fetch client.
//
// [Cache] keeps JSON entries in one directory, one file per key, named by
// the SHA-256 of the key. Entries older than the cache TTL read as
// [ErrExpired]. The default directory is $XDG_CACHE_HOME/twatypes (or the
// platform equivalent), which `twatypes cache path` prints and
// `twatypes cache clear` empties.
//
// [Retry] repeats an operation with exponential backoff, but only when the
// error is wrapped in [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
