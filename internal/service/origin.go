package service

import (
	"net/url"
	"strings"
)

// MaterialDir is the folder, relative to the storage root, that holds uploads.
const MaterialDir = "CourseMaterial"

// Origin identifies the request a response is built for; absolute file URLs
// are derived from it.
type Origin struct {
	Scheme   string
	Host     string
	PathBase string
}

func (o Origin) base() string {
	scheme := o.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + o.Host + strings.TrimRight(o.PathBase, "/")
}

// PublicURL is the URL used by create, list and lookup responses:
// <scheme>://<host><path-base>/wwwroot/CourseMaterial/<file>.
func (o Origin) PublicURL(fileName string) string {
	return o.base() + "/wwwroot/" + MaterialDir + "/" + url.PathEscape(fileName)
}

// ViewerURL is the URL used by the view endpoint. It has no "wwwroot" segment:
// <scheme>://<host><path-base>/<key>.
func (o Origin) ViewerURL(key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return o.base() + "/" + strings.Join(segments, "/")
}

func materialKey(fileName string) string {
	return MaterialDir + "/" + fileName
}
