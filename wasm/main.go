//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"graphplot/app/plot"
)

var session *plot.Session

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	width, height := 800.0, 600.0
	if w := js.Global().Get("innerWidth"); w.Type() == js.TypeNumber {
		width, height = w.Float(), js.Global().Get("innerHeight").Float()
	}
	var err error
	session, err = plot.NewSession(width, height, plot.WithLogger(logger))
	if err != nil {
		logger.Error("start session", slog.Any("err", err))
		return
	}

	register("setText", 2, func(args []js.Value) any {
		if err := session.SetText(args[0].Int(), args[1].String()); err != nil {
			return err.Error()
		}
		return slots()
	})
	register("zoom", 3, func(args []js.Value) any {
		return session.Zoom(args[0].Float(), args[1].Float(), args[2].Bool())
	})
	register("move", 2, func(args []js.Value) any {
		session.Move(args[0].Float(), args[1].Float())
		return nil
	})
	register("resize", 2, func(args []js.Value) any {
		return errString(session.Resize(args[0].Float(), args[1].Float()))
	})
	register("setViewport", 4, func(args []js.Value) any {
		return errString(session.SetViewport(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float()))
	})
	register("viewport", 0, func([]js.Value) any {
		v := session.Viewport()
		unit, power := v.GridUnit()
		return map[string]any{
			"width": v.Width, "height": v.Height,
			"minX": v.MinX, "maxX": v.MaxX, "minY": v.MinY, "maxY": v.MaxY,
			"gridUnit": unit, "gridPower": power,
		}
	})
	register("curve", 2, func(args []js.Value) any {
		curve, err := session.Curve(args[0].Int(), args[1].Float())
		if err != nil {
			return err.Error()
		}
		// Flat [x0, y0, x1, y1, ...] in pixels; NaN breaks the line.
		v := session.Viewport()
		arr := js.Global().Get("Array").New(2 * len(curve))
		for i, p := range curve {
			px, py := v.ToPixels(p.X, p.Y)
			if !p.OK {
				py = js.Global().Get("NaN").Float()
			}
			arr.SetIndex(2*i, px)
			arr.SetIndex(2*i+1, py)
		}
		return arr
	})
	register("points", 0, func([]js.Value) any {
		points := session.Points()
		arr := js.Global().Get("Array").New(len(points))
		for i, p := range points {
			arr.SetIndex(i, pointObject(p))
		}
		return arr
	})
	register("pointNear", 3, func(args []js.Value) any {
		p, ok := session.PointNear(args[0].Float(), args[1].Float(), args[2].Float())
		if !ok {
			return nil
		}
		return pointObject(p)
	})
	register("tick", 0, func([]js.Value) any {
		return session.Tick()
	})
	register("status", 0, func([]js.Value) any {
		return slots()
	})

	// Signal that WASM is ready
	js.Global().Set("_wasmReady", true)
	onReady := js.Global().Get("_onWasmReady")
	if !onReady.IsUndefined() && !onReady.IsNull() {
		onReady.Invoke()
	}

	// Block forever
	select {}
}

// register exposes fn as a global JavaScript function taking at least
// arity arguments; shorter calls return null.
func register(name string, arity int, fn func(args []js.Value) any) {
	js.Global().Set(name, js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < arity {
			return nil
		}
		return fn(args)
	}))
}

func slots() any {
	reg := session.Registry()
	arr := js.Global().Get("Array").New(plot.SlotCount)
	for i := 0; i < plot.SlotCount; i++ {
		fn, _ := reg.Get(i)
		errText := ""
		if fn.Err != nil {
			errText = fn.Err.Error()
		}
		arr.SetIndex(i, js.ValueOf(map[string]any{
			"name":     string(reg.Name(i)),
			"text":     reg.Text(i),
			"source":   reg.SourceString(i),
			"status":   reg.Status(i).String(),
			"constant": reg.ConstantDisplayString(i),
			"err":      errText,
		}))
	}
	return arr
}

func pointObject(p plot.SpecialPoint) js.Value {
	labels := make([]any, len(p.Descriptions))
	for i, d := range p.Descriptions {
		labels[i] = string(d)
	}
	return js.ValueOf(map[string]any{
		"x":            p.X,
		"y":            p.Y,
		"index":        p.Index,
		"descriptions": labels,
	})
}

func errString(err error) any {
	if err != nil {
		return err.Error()
	}
	return nil
}
