/*
Copyright © 2026 the Geoman authors.
This file is part of Geoman.

Geoman is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Geoman is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Geoman.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package geomanutil holds the command-line interface to the Geoman
// editing engine. The commands load shapes from GeoJSON or shapefile
// scenes, run one engine operation and write the result as GeoJSON.
package geomanutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/geoman"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Geoman.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "options",
			usage: `
              options specifies the location of a TOML file holding the
              editing options, such as SnapDistance and SnappingOrder.
              Settings missing from the file keep their default values.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging level: one of panic, fatal, error,
              warn, info or debug.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "projection",
			usage: `
              projection specifies the plane that snapping distances and
              rotations are calculated in. Leave empty to use longitude and
              latitude directly, use "webmercator" for the web map plane,
              or give any Proj4 definition.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "zoom",
			usage: `
              zoom is the map zoom level used by the projection.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input specifies the scene file to read. Files ending in
              .shp are read as shapefiles and all others as GeoJSON
              feature collections.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cutCmd.Flags(), rotateCmd.Flags(), snapCmd.Flags(), kinksCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the GeoJSON file to write the result to.
              The result is written to standard output if it is empty.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cutCmd.Flags(), rotateCmd.Flags(), kinksCmd.Flags()},
		},
		{
			name: "cutter",
			usage: `
              cutter specifies the scene file holding the polygons to cut
              the input shapes with. The polygons are applied in order.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cutCmd.Flags()},
		},
		{
			name: "layers",
			usage: `
              layers restricts the operation to the shapes with the
              given IDs. All eligible shapes are used if it is empty.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{cutCmd.Flags(), rotateCmd.Flags()},
		},
		{
			name: "angle",
			usage: `
              angle is the rotation in degrees, counter-clockwise in the
              projected plane.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
		{
			name: "toangle",
			usage: `
              toangle rotates each shape so that its angle becomes the
              value of --angle instead of rotating it by that amount.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
		{
			name: "point",
			usage: `
              point is the longitude and latitude of the position to snap,
              separated by a comma.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{snapCmd.Flags()},
		},
		{
			name: "snapdistance",
			usage: `
              snapdistance overrides the SnapDistance editing option when
              it is not negative.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{snapCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOMAN")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(cutCmd)
	Root.AddCommand(rotateCmd)
	Root.AddCommand(snapCmd)
	Root.AddCommand(kinksCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and applies the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geoman: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("loglevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geoman",
	Short: "A geometry editing engine.",
	Long: `Geoman snaps, rotates and cuts marker, line, polygon, rectangle and
circle shapes. Use the subcommands specified below to run engine operations
on GeoJSON or shapefile scenes.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOMAN_var' where 'var' is the
name of the variable to be set. Editing options are read from the TOML file
given with the --options flag.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Geoman.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Geoman v%s\n", geoman.Version)
	},
	DisableAutoGenTag: true,
}

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Cut shapes with polygons.",
	Long: `cut subtracts each polygon in the cutter scene from the shapes in the
input scene that it overlaps. Polygons keep the area outside the cutter and
lines keep the pieces outside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, sc, err := loadMap(Cfg)
		if err != nil {
			return err
		}
		cutters, err := LoadScene(Cfg.GetString("cutter"))
		if err != nil {
			return err
		}
		if err := Cut(m, cutters.Shapes, Cfg.GetStringSlice("layers")); err != nil {
			return err
		}
		sc.Shapes = m.Shapes()
		return WriteScene(sc, Cfg.GetString("output"), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate shapes around their centers.",
	Long: `rotate turns the lines, polygons and rectangles in the input scene by
--angle degrees around their centroids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, sc, err := loadMap(Cfg)
		if err != nil {
			return err
		}
		err = Rotate(m, Cfg.GetFloat64("angle"), Cfg.GetBool("toangle"), Cfg.GetStringSlice("layers"))
		if err != nil {
			return err
		}
		sc.Shapes = m.Shapes()
		return WriteScene(sc, Cfg.GetString("output"), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var snapCmd = &cobra.Command{
	Use:   "snap",
	Short: "Snap a point to the input shapes.",
	Long: `snap reports where a marker dragged to --point would be placed by the
snapping engine, and which shape it would snap to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadMap(Cfg)
		if err != nil {
			return err
		}
		ll, err := parsePoint(Cfg.GetStringSlice("point"))
		if err != nil {
			return err
		}
		if d := Cfg.GetFloat64("snapdistance"); d >= 0 {
			m.Options.SnapDistance = d
		}
		r := Snap(m, ll)
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
	DisableAutoGenTag: true,
}

var kinksCmd = &cobra.Command{
	Use:   "kinks",
	Short: "Find self-intersections.",
	Long: `kinks finds the points where the lines and polygons in the input scene
cross themselves and writes them as markers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sc, err := loadMap(Cfg)
		if err != nil {
			return err
		}
		return WriteScene(FindKinks(sc), Cfg.GetString("output"), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}
