// Package clipboard persists the file browser's cut/copy selection in
// browser cookies.
//
// Browsers cap individual cookies at roughly 4 KB, which a selection of
// many long paths can exceed. The jar therefore paginates: the serialized
// state is base64-encoded and split across numbered chunk cookies
// ("<name>.0", "<name>.1", ...) with a count cookie ("<name>") recording
// how many chunks to reassemble. Saving a smaller state over a larger one
// expires the now-unused chunk cookies.
//
//	jar := clipboard.NewJar()
//	err := jar.Save(w, r, clipboard.State{
//		Op:    clipboard.OpCut,
//		Paths: []string{"docs/a.txt", "docs/b.txt"},
//	})
//
//	state, err := jar.Load(r)
//	if errors.Is(err, clipboard.ErrNoClipboard) {
//		// nothing pending
//	}
//
// The state is a client-side convenience, not a security boundary: paths
// loaded from cookies are validated against the jail root again at paste
// time like any other client input.
package clipboard
