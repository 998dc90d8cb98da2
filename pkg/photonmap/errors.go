package photonmap

import "errors"

// ErrAlreadyBuilt is returned by Build when the tree exists and by Insert
// when photons arrive after the tree was built.
var ErrAlreadyBuilt = errors.New("photonmap: map is already built")
