package palette

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFrom reads every palette stored in a RIFF PAL stream, in order.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readChunks(rd, string(formType[:]))
}

func readChunks(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for {
		id, size, data, err := r.Next()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		switch id {
		case dataType:
			pal, err := readPalette(data, size, fmt.Sprintf("%s#%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), err)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported list type: %q", ident, len(res), string(listType[:]))
			}

			sub, err := readChunks(list, fmt.Sprintf("%s#%d.%s", ident, len(res), listType[:]))
			res = append(res, sub...)
			if err != nil {
				return res, err
			}
		}
		// anything else is metadata and is skipped
	}
}

func readPalette(r io.Reader, size uint32, ident string) (color.Palette, error) {
	var hdr [4]byte
	if size < uint32(len(hdr)) {
		return nil, fmt.Errorf("chunk %s too small for a palette header: %d", ident, size)
	}
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(hdr[0:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(hdr[2:4]))
	if need := uint32(len(hdr) + 4*count); size < need {
		return nil, fmt.Errorf("chunk %s holds %d bytes, %d colors need %d", ident, size, count, need)
	}

	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read %d colors from chunk %s: %w", count, ident, err)
	}

	res := make(color.Palette, count)
	for i := range res {
		e := buf[4*i : 4*i+4 : 4*i+4]
		res[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}

	return res, nil
}

// WriteTo writes pals as a single RIFF PAL stream with one data chunk per
// palette and returns the number of bytes written.
func WriteTo(w io.Writer, pals []color.Palette) (int64, error) {
	size := len(palType)
	for i, pal := range pals {
		if len(pal) > 0xffff {
			return 0, fmt.Errorf("palette %d has too many colors for RIFF: %d", i, len(pal))
		}
		size += 8 + 4 + 4*len(pal) // chunk id + chunk size + header + 4 bytes/color
	}

	var buf bytes.Buffer
	buf.Grow(8 + size)
	buf.Write(riffType[:])
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(size)))
	buf.Write(palType[:])

	for _, pal := range pals {
		buf.Write(dataType[:])
		buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+4*len(pal))))
		buf.Write(binary.LittleEndian.AppendUint16(nil, palVersion))
		buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(len(pal))))
		for _, col := range pal {
			c := color.RGBAModel.Convert(col).(color.RGBA)
			buf.Write([]byte{c.R, c.G, c.B, 0x00})
		}
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("could not write RIFF palette: %w", err)
	} else if n != buf.Len() {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes", n, buf.Len())
	}

	return int64(n), nil
}
