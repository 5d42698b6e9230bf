//go:build unix

package workload

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// touchPages maps n anonymous pages and writes one byte to each of them.
func touchPages(n int) error {
	pageSize := unix.Getpagesize()

	pages, err := unix.Mmap(-1, 0, n*pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("failed to map %d pages: %w", n, err)
	}

	for i := 0; i < n; i++ {
		pages[i*pageSize] = byte(i)
	}
	sink = int(pages[(n-1)*pageSize])

	return unix.Munmap(pages)
}
