package model

import "fmt"

// Version is a document format version MM.nn.PP.rr
type Version struct {
	Major, Minor, Build, Revision uint8
}

// VersionFromUint32 unpacks a 0xMMnnPPrr version word
func VersionFromUint32(v uint32) Version {
	return Version{
		Major:    uint8(v >> 24),
		Minor:    uint8(v >> 16),
		Build:    uint8(v >> 8),
		Revision: uint8(v),
	}
}

// Uint32 packs the version back into its word form
func (v Version) Uint32() uint32 {
	return uint32(v.Major)<<24 | uint32(v.Minor)<<16 | uint32(v.Build)<<8 | uint32(v.Revision)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal
// to or newer than o.
func (v Version) Compare(o Version) int {
	a, b := v.Uint32(), o.Uint32()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// AtLeast reports whether v is o or newer
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// FileFlags holds the FileHeader property bits.
type FileFlags uint32

const (
	FlagCompressed FileFlags = 1 << iota
	FlagPassword
	FlagDistributable
	FlagScript
	FlagDRM
	FlagXMLTemplate
	FlagHistory
	FlagCertSignature
	FlagCertEncryption
	FlagCertSignatureSpare
	FlagCertDRM
	FlagCCL
	FlagMobileOptimized
	FlagPrivacySecurity
	FlagTrackChange
	FlagKOGL
	FlagVideoControl
	FlagTOCField
)

var flagNames = []string{
	"compressed", "password", "distributable", "script", "drm",
	"xml-template", "history", "cert-signature", "cert-encryption",
	"cert-signature-spare", "cert-drm", "ccl", "mobile-optimized",
	"privacy-security", "track-change", "kogl", "video-control", "toc-field",
}

// Has reports whether every bit of f is set
func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag == flag
}

// Names lists the set flags in bit order
func (f FileFlags) Names() []string {
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}

// LicenseFlags holds the FileHeader license bits.
type LicenseFlags uint32

const (
	LicenseCCL LicenseFlags = 1 << iota
	LicenseNoCopy
	LicenseSameCondition
)

// FileHeader is the fixed 256-byte FileHeader stream.
type FileHeader struct {
	Signature      string
	Version        Version
	Flags          FileFlags
	License        LicenseFlags
	EncryptVersion uint32
	KOGLCountry    uint8
}

// Compressed reports whether body streams are raw-deflate compressed
func (h *FileHeader) Compressed() bool { return h.Flags.Has(FlagCompressed) }

// PasswordProtected reports whether the document is password encrypted
func (h *FileHeader) PasswordProtected() bool { return h.Flags.Has(FlagPassword) }

// Distributable reports whether the body lives in encrypted ViewText streams
func (h *FileHeader) Distributable() bool { return h.Flags.Has(FlagDistributable) }
