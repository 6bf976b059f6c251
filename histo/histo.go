//Package histo builds 1D histograms of chain properties, such as the
//end-to-end distance or the radius of gyration over an ensemble.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Values in [dividers[i], dividers[i+1]) go
//to bin i. Values outside [dividers[0], dividers[len-1]) are counted
//in the total but not binned.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//if an ID for the histogram is given, it will be set. If not, the ID will
//be set to -1. It panics if fewer than 2 dividers are given, or
//if they are not sorted.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("chaingen/histo.NewData: at least 2 sorted dividers are needed")
	}
	d := new(Data)
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

//EvenDividers returns n+1 dividers splitting [min,max] in n bins of the same width.
//max is nudged up by one ULP so a value equal to max falls in the last bin.
func EvenDividers(min, max float64, n int) []float64 {
	if n < 1 || !(max > min) {
		panic("chaingen/histo.EvenDividers: need n > 0 and max > min")
	}
	d := make([]float64, n+1)
	floats.Span(d, min, max)
	d[n] = math.Nextafter(max, math.Inf(1))
	return d
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//Total returns the number of values given to the histogram,
//including those out of range.
func (D *Data) Total() int {
	return D.total
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] || math.IsNaN(v) {
			continue
		}
		//first divider strictly larger than v, the bin is the one before.
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
	}
	D.total += len(point)
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//ReHisto replaces the contents of the histogram with the
//values in rawdata, which is not modified.
func (D *Data) ReHisto(rawdata []float64) {
	D.normalized = false
	D.total = len(rawdata)
	s := make([]float64, 0, len(rawdata))
	last := D.dividers[len(D.dividers)-1]
	//stat.Histogram panics with values out of range
	//so we remove them here before the call.
	for _, v := range rawdata {
		if v >= D.dividers[0] && v < last {
			s = append(s, v)
		}
	}
	sort.Float64s(s)
	D.histo = stat.Histogram(nil, D.dividers, s, nil)
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram, so each bin contains the
//fraction of the total values that fall in it.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//CopyDividers copies the dividers of the histogram to dest, if given and
//large enough, or to a new slice, and returns the copy.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	copy(d, D.dividers)
	return d
}

//Copy copies the bins of the histogram, the same way CopyDividers does
//with the dividers.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	copy(d, D.histo)
	return d
}

//View returns the bins themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//String prints a -hopefully- pretty string representation of
//the histogram, one bin per line.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	t := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		t = append(t, fmt.Sprintf("%8.2f-%-8.2f %9.3f", D.dividers[i], D.dividers[i+1], v))
	}
	return ret + strings.Join(t, "\n")
}

type jsonData struct {
	ID         int       `json:"id"`
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("chaingen/histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= N {
		return dest[0][:N]
	}
	return make([]float64, N)
}
