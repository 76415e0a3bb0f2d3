// Package permission answers whether the coarse-location capability is
// currently granted. Gates only read grants; requesting or revoking them is
// the job of the external consent flow.
package permission
