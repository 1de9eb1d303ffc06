//go:build disable_nvml

package gpu

import "errors"

func Open() (Session, error) {
	return nil, errors.New("this version of nvml-tool was built without NVIDIA (nvml) support")
}
