//go:build js && wasm

package main

import (
	"syscall/js"

	"rawclean/pkg/rawclean"
)

// Browser entry point, built with the purego kernel backend. Sample buffers
// cross the JS boundary as little-endian Uint8Array views over uint16 data.

func main() {
	js.Global().Set("denoiseRaw", js.FuncOf(denoiseRaw))
	js.Global().Set("repairRaw", js.FuncOf(repairRaw))
	select {} // block forever
}

// denoiseRaw(samples, width, height, channels, strength, highres) -> Uint8Array | {error}
func denoiseRaw(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return errorResult("usage: denoiseRaw(samples, width, height, channels, strength, highres)")
	}
	data, width, height, channels := copySamplesToGo(args[0], args[1], args[2], args[3])
	if data == nil {
		return errorResult("sample buffer does not match width*height*channels")
	}
	strength := args[4].Float()
	highres := len(args) >= 6 && args[5].Truthy()

	v := rawclean.NewView(data, height, width, channels, width*channels)
	var err error
	if highres {
		err = rawclean.DenoiseHighRes(v, strength)
	} else {
		err = rawclean.Denoise(v, strength)
	}
	if err != nil {
		return errorResult(err.Error())
	}
	return samplesToJS(data)
}

// repairRaw(samples, width, height, channels, mask, radius, method) -> Uint8Array | {error}
func repairRaw(this js.Value, args []js.Value) interface{} {
	if len(args) < 7 {
		return errorResult("usage: repairRaw(samples, width, height, channels, mask, radius, method)")
	}
	data, width, height, channels := copySamplesToGo(args[0], args[1], args[2], args[3])
	if data == nil {
		return errorResult("sample buffer does not match width*height*channels")
	}

	jsMask := args[4]
	maskData := make([]uint8, jsMask.Get("length").Int())
	js.CopyBytesToGo(maskData, jsMask)
	if len(maskData) != width*height {
		return errorResult("mask buffer does not match width*height")
	}

	v := rawclean.NewView(data, height, width, channels, width*channels)
	mask := rawclean.NewMask(maskData, height, width, width)
	method := rawclean.InpaintMethod(args[6].Int())
	if err := rawclean.Repair(v, mask, args[5].Int(), method); err != nil {
		return errorResult(err.Error())
	}
	return samplesToJS(data)
}

func copySamplesToGo(jsBytes, jsWidth, jsHeight, jsChannels js.Value) ([]uint16, int, int, int) {
	width := jsWidth.Int()
	height := jsHeight.Int()
	channels := jsChannels.Int()

	raw := make([]byte, jsBytes.Get("length").Int())
	js.CopyBytesToGo(raw, jsBytes)
	if len(raw) != 2*width*height*channels {
		return nil, 0, 0, 0
	}
	data := make([]uint16, width*height*channels)
	for i := range data {
		data[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return data, width, height, channels
}

func samplesToJS(data []uint16) js.Value {
	raw := make([]byte, 2*len(data))
	for i, v := range data {
		raw[2*i] = byte(v)
		raw[2*i+1] = byte(v >> 8)
	}
	out := js.Global().Get("Uint8Array").New(len(raw))
	js.CopyBytesToJS(out, raw)
	return out
}

func errorResult(msg string) interface{} {
	return map[string]interface{}{"error": msg}
}
