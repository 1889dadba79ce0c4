package types

// Tag key and values used to classify boot images. An image tagged
// bootimage=true must never be deleted; bootimage=false marks it as
// retired and eligible for deletion.
const (
	BootimageTagKey   = "bootimage"
	BootimageTagTrue  = "true"
	BootimageTagFalse = "false"
)

// ImageRef identifies one cloud image resource. The same image id in
// two regions is two distinct resources.
type ImageRef struct {
	Region string `json:"region"`
	Image  string `json:"image"`
}

// TagSet is the set of tags attached to one image in one region.
type TagSet map[string]string

// HasClassification reports whether the image already carries a
// bootimage tag with value "true" or "false". Any other value does not
// count as a classification.
func (t TagSet) HasClassification() bool {
	value, ok := t[BootimageTagKey]
	if !ok {
		return false
	}
	return value == BootimageTagTrue || value == BootimageTagFalse
}

// IsProtected reports whether the image carries the protective
// bootimage=true tag.
func (t TagSet) IsProtected() bool {
	return t[BootimageTagKey] == BootimageTagTrue
}

// ImageStatus is the result of describing one image.
type ImageStatus struct {
	Tags     TagSet
	IsPublic bool
}

// BuildListing is one entry of a release feed's builds document.
type BuildListing struct {
	ID     string   `json:"id"`
	Arches []string `json:"arches"`
}

// RegionalImage is one entry of a build's cloud image list in the
// per-build metadata document.
type RegionalImage struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// RegionImage is one region's entry in the installer metadata file.
type RegionImage struct {
	Release string `json:"release"`
	Image   string `json:"image"`
}
