// SPDX-License-Identifier: EPL-2.0

// Package playback provides audio.Backend implementations.
//
// Oto plays buffers on the default output device:
//
//	dev := playback.NewOto(0.8, logger)
//	defer dev.Close()
//
//	if err := sound.BindTo(dev); err != nil {
//	    return err
//	}
//	err := dev.Wait(ctx)
//
// The device is opened on the first bind with that buffer's rate and
// layout. Later buffers must match it or BindDataBuffer fails with
// ErrDeviceMismatch.
//
// Memory records bindings without touching a device.
package playback
