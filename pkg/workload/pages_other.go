//go:build !unix

package workload

import "errors"

func touchPages(n int) error {
	return errors.New("the pages workload needs a unix platform")
}
