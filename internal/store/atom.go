package store

import "github.com/rotkonetworks/x11q/internal/wire"

// predefinedAtomNames seeds the atom table so client InternAtom calls for
// any of the X11 core protocol's predefined names collide with the ids the
// protocol hardcodes, rather than being assigned fresh ones.
var predefinedAtomNames = map[wire.Atom]string{
	wire.AtomPrimary:          "PRIMARY",
	wire.AtomSecondary:        "SECONDARY",
	wire.AtomArc:              "ARC",
	wire.AtomAtom:             "ATOM",
	wire.AtomBitmap:           "BITMAP",
	wire.AtomCardinal:         "CARDINAL",
	wire.AtomColormap:         "COLORMAP",
	wire.AtomCursor:           "CURSOR",
	wire.AtomCutBuffer0:       "CUT_BUFFER0",
	wire.AtomCutBuffer1:       "CUT_BUFFER1",
	wire.AtomCutBuffer2:       "CUT_BUFFER2",
	wire.AtomCutBuffer3:       "CUT_BUFFER3",
	wire.AtomCutBuffer4:       "CUT_BUFFER4",
	wire.AtomCutBuffer5:       "CUT_BUFFER5",
	wire.AtomCutBuffer6:       "CUT_BUFFER6",
	wire.AtomCutBuffer7:       "CUT_BUFFER7",
	wire.AtomDrawable:         "DRAWABLE",
	wire.AtomFont:             "FONT",
	wire.AtomInteger:          "INTEGER",
	wire.AtomPixmap:           "PIXMAP",
	wire.AtomPoint:            "POINT",
	wire.AtomRectangle:        "RECTANGLE",
	wire.AtomResourceManager:  "RESOURCE_MANAGER",
	wire.AtomRGBColorMap:      "RGB_COLOR_MAP",
	wire.AtomRGBBestMap:       "RGB_BEST_MAP",
	wire.AtomRGBBlueMap:       "RGB_BLUE_MAP",
	wire.AtomRGBDefaultMap:    "RGB_DEFAULT_MAP",
	wire.AtomRGBGrayMap:       "RGB_GRAY_MAP",
	wire.AtomRGBGreenMap:      "RGB_GREEN_MAP",
	wire.AtomRGBRedMap:        "RGB_RED_MAP",
	wire.AtomString:           "STRING",
	wire.AtomVisualID:         "VISUALID",
	wire.AtomWindow:           "WINDOW",
	wire.AtomWMCommand:        "WM_COMMAND",
	wire.AtomWMHints:          "WM_HINTS",
	wire.AtomWMClientMachine:  "WM_CLIENT_MACHINE",
	wire.AtomWMIconName:       "WM_ICON_NAME",
	wire.AtomWMIconSize:       "WM_ICON_SIZE",
	wire.AtomWMName:           "WM_NAME",
	wire.AtomWMNormalHints:    "WM_NORMAL_HINTS",
	wire.AtomWMSizeHints:      "WM_SIZE_HINTS",
	wire.AtomWMZoomHints:      "WM_ZOOM_HINTS",
	wire.AtomMinSpace:         "MIN_SPACE",
	wire.AtomNormSpace:        "NORM_SPACE",
	wire.AtomMaxSpace:         "MAX_SPACE",
	wire.AtomEndSpace:         "END_SPACE",
	wire.AtomSuperscriptX:     "SUPERSCRIPT_X",
	wire.AtomSuperscriptY:     "SUPERSCRIPT_Y",
	wire.AtomSubscriptX:       "SUBSCRIPT_X",
	wire.AtomSubscriptY:       "SUBSCRIPT_Y",
	wire.AtomUnderlinePos:     "UNDERLINE_POSITION",
	wire.AtomUnderlineThick:   "UNDERLINE_THICKNESS",
	wire.AtomStrikeoutAscent:  "STRIKEOUT_ASCENT",
	wire.AtomStrikeoutDescent: "STRIKEOUT_DESCENT",
	wire.AtomItalicAngle:      "ITALIC_ANGLE",
	wire.AtomXHeight:          "X_HEIGHT",
	wire.AtomQuadWidth:        "QUAD_WIDTH",
	wire.AtomWeight:           "WEIGHT",
	wire.AtomPointSize:        "POINT_SIZE",
	wire.AtomResolution:       "RESOLUTION",
	wire.AtomCopyright:        "COPYRIGHT",
	wire.AtomNotice:           "NOTICE",
	wire.AtomFontName:         "FONT_NAME",
	wire.AtomFamilyName:       "FAMILY_NAME",
	wire.AtomFullName:         "FULL_NAME",
	wire.AtomCapHeight:        "CAP_HEIGHT",
	wire.AtomWMClass:          "WM_CLASS",
	wire.AtomWMTransientFor:   "WM_TRANSIENT_FOR",
}

// AtomTable is the bidirectional name<->id table of §3. Interning is
// global across clients, not per-connection.
type AtomTable struct {
	byName map[string]wire.Atom
	byID   map[wire.Atom]string
	next   wire.Atom
}

func newAtomTable() *AtomTable {
	t := &AtomTable{
		byName: make(map[string]wire.Atom, len(predefinedAtomNames)),
		byID:   make(map[wire.Atom]string, len(predefinedAtomNames)),
		next:   wire.FirstFreeAtom,
	}
	for id, name := range predefinedAtomNames {
		t.byName[name] = id
		t.byID[id] = name
	}
	return t
}

// Intern returns the atom id for name, allocating a new one unless
// onlyIfExists is set and the name is unknown, in which case it returns
// AtomNone.
func (t *AtomTable) Intern(name string, onlyIfExists bool) wire.Atom {
	if id, ok := t.byName[name]; ok {
		return id
	}
	if onlyIfExists {
		return wire.AtomNone
	}
	id := t.next
	t.next++
	t.byName[name] = id
	t.byID[id] = name
	return id
}

// Name returns the name for id, and whether it is known.
func (t *AtomTable) Name(id wire.Atom) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}
