package images

import (
	"crypto/md5"
	"fmt"

	"gocv.io/x/gocv"
)

// MatChecksum returns a hex MD5 digest of the Mat's pixel data, or "empty"
// for an empty Mat. Two frames with the same checksum have identical pixels.
//
// Arguments:
//   - mat: The Mat to digest.
//
// Returns:
//   - string: The digest.
func MatChecksum(mat gocv.Mat) string {
	if mat.Empty() {
		return "empty"
	}
	data, err := mat.DataPtrUint8()
	if err != nil {
		clone := mat.Clone()
		defer clone.Close()
		data = clone.ToBytes()
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
