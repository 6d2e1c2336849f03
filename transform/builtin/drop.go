package builtin

import "github.com/arloliu/tsfuse/transform"

// Drop returns a rewriter that deletes the target column from every row.
func Drop() transform.Rewriter {
	return transform.RewriteFunc(func(string, string) transform.Result {
		return transform.Drop()
	})
}
