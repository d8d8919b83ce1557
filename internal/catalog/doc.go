// Package catalog implements the library catalog: an ordered collection of
// books backed by a ports.Store.
//
// A Catalog loads its store once when opened and writes the whole collection
// back after every change. It is not safe for concurrent use; a process owns
// exactly one Catalog and drives it from a single goroutine.
//
//	store := fs.NewStoreFile("library.json")
//	c, err := catalog.Open(ctx, store)
//	if err != nil {
//	    return err
//	}
//	if err := c.LoadError(); err != nil {
//	    fmt.Println("warning:", err)
//	}
//	book, err := c.AddBook(ctx, "Dune", "Frank Herbert", "1965")
package catalog
