package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Versifine/galleria/internal/config"
	"github.com/Versifine/galleria/internal/hud"
	"github.com/Versifine/galleria/internal/session"
	"github.com/Versifine/galleria/internal/teleport"
)

func zonesCommand(cfg *config.Config, out io.Writer) error {
	reg, err := session.LoadRegistry(cfg.Zones)
	if err != nil {
		return err
	}
	tp := teleport.NewService(reg, cfg.Camera.EyeHeight, cfg.Camera.ApproachOffset)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tID\tTITLE\tPOSITION\tRADIUS\tTELEPORT")
	for i, e := range hud.Menu(reg.Zones()) {
		z, _ := reg.At(i)
		key := "-"
		if e.Key != 0 {
			key = string(e.Key)
		}
		dest := tp.Destination(z)
		fmt.Fprintf(w, "%s\t%s\t%s\t(%g, %g, %g)\t%g\t(%g, %g, %g)\n",
			key, z.ID, e.Title,
			z.Position.X, z.Position.Y, z.Position.Z,
			z.Radius,
			dest.X, dest.Y, dest.Z,
		)
	}
	return w.Flush()
}

func configCommand(cfg *config.Config, out io.Writer) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
