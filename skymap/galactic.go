package skymap

import "math"

// equatorialToGalactic is the ICRS (J2000) to galactic rotation.
var equatorialToGalactic = [3][3]float64{
	{-0.0548755604162154, -0.8734370902348850, -0.4838350155487132},
	{+0.4941094278755837, -0.4448296299600112, +0.7469822444972189},
	{-0.8676661490190047, -0.1980763734312015, +0.4559837761750669},
}

// EquatorialToGalactic converts ICRS right ascension and declination to
// galactic longitude and latitude. All angles are in radians; the returned
// longitude is in [0, 2π).
func EquatorialToGalactic(ra, dec float64) (l, b float64) {
	return rotate(&equatorialToGalactic, false, ra, dec)
}

// GalacticToEquatorial is the inverse of EquatorialToGalactic.
func GalacticToEquatorial(l, b float64) (ra, dec float64) {
	return rotate(&equatorialToGalactic, true, l, b)
}

func rotate(m *[3][3]float64, transpose bool, lon, lat float64) (float64, float64) {
	cl := math.Cos(lat)
	v := [3]float64{cl * math.Cos(lon), cl * math.Sin(lon), math.Sin(lat)}

	var r [3]float64
	for i := range 3 {
		for j := range 3 {
			if transpose {
				r[i] += m[j][i] * v[j]
			} else {
				r[i] += m[i][j] * v[j]
			}
		}
	}

	outLon := math.Atan2(r[1], r[0])
	if outLon < 0 {
		outLon += 2 * math.Pi
	}
	z := math.Max(-1, math.Min(1, r[2]))
	return outLon, math.Asin(z)
}
