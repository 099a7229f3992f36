//go:build !linux && !darwin && !windows

package platform

func Notify(title, body string, opts Options) error {
	return ErrUnsupported
}
