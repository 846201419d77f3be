package journal

import "slices"

// SelectFeatured applies a selection of url to the featured image.
// Selecting a different image features it. Re-selecting the featured image
// moves to the next image in list order, wrapping around, or clears the
// selection when it is the only image. URLs not in images leave featured
// unchanged.
func SelectFeatured(images []string, featured, url string) string {
	i := slices.Index(images, url)
	if i < 0 {
		return featured
	}
	if url != featured {
		return url
	}
	if len(images) == 1 {
		return ""
	}
	return images[(i+1)%len(images)]
}

// FeaturedAfterDelete returns the featured image once deleted has been
// removed, given the remaining images. Deleting the featured image falls back
// to the first remaining one or clears it.
func FeaturedAfterDelete(remaining []string, featured, deleted string) string {
	if featured != deleted {
		return featured
	}
	if len(remaining) == 0 {
		return ""
	}
	return remaining[0]
}

// FeaturedAfterAdd features the first image added to a day without one.
func FeaturedAfterAdd(featured, added string) string {
	if featured == "" {
		return added
	}
	return featured
}

// AddImage appends url unless already present and fixes up the featured image.
func AddImage(d DailyData, url string) DailyData {
	if !slices.Contains(d.ImageURLs, url) {
		d.ImageURLs = append(slices.Clone(d.ImageURLs), url)
	}
	d.FeaturedImageURL = FeaturedAfterAdd(d.FeaturedImageURL, url)
	return d
}

// RemoveImage drops url from d and fixes up the featured image.
func RemoveImage(d DailyData, url string) DailyData {
	d.ImageURLs = slices.DeleteFunc(slices.Clone(d.ImageURLs), func(u string) bool { return u == url })
	d.FeaturedImageURL = FeaturedAfterDelete(d.ImageURLs, d.FeaturedImageURL, url)
	return d
}
