package mock

import "github.com/fwojciec/ecolocator"

var _ ecolocator.Directory = (*Directory)(nil)

// Directory is a mock implementation of ecolocator.Directory.
type Directory struct {
	LookupFn func(query string) (*ecolocator.DirectoryEntry, bool)
	LenFn    func() int
}

func (d *Directory) Lookup(query string) (*ecolocator.DirectoryEntry, bool) {
	return d.LookupFn(query)
}

func (d *Directory) Len() int {
	return d.LenFn()
}
