package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	raw := append([]float64(nil), rawdata...)
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata, 3)
	fmt.Println(D)
	if !floats.Equal(raw, rawdata) {
		Te.Error("NewData must not modify the raw data")
	}
	//8, 44 and 32 are out of range.
	want := []float64{2, 6, 2, 7, 9}
	if !floats.Equal(D.View(), want) {
		Te.Errorf("got bins %v, want %v", D.View(), want)
	}
	if D.Total() != len(rawdata) || D.ID() != 3 {
		Te.Errorf("wrong total %d or ID %d", D.Total(), D.ID())
	}
	E := NewData([]float64{0, 1, 2, 3, 4, 8}, nil)
	E.AddData(rawdata...)
	if !floats.Equal(E.View(), want) {
		Te.Errorf("AddData gave %v, want %v", E.View(), want)
	}
	D.Normalize()
	D.Normalize() //no-op
	if math.Abs(D.Sum()-26.0/29) > 1e-12 {
		Te.Errorf("normalized histogram should add to 26/29, got %g", D.Sum())
	}
	D.AddData(0.5)
	if !D.Normalized() || math.Abs(D.View()[0]-3.0/30) > 1e-12 {
		Te.Errorf("AddData on a normalized histogram should keep it normalized, got %v", D.View())
	}
	D.UnNormalize()
	if math.Abs(D.View()[0]-3) > 1e-9 {
		Te.Errorf("un-normalized first bin should be 3, got %g", D.View()[0])
	}
}

func TestEvenDividers(Te *testing.T) {
	d := EvenDividers(0, 10, 5)
	if len(d) != 6 || d[1] != 2 || d[5] <= 10 {
		Te.Errorf("wrong dividers %v", d)
	}
	D := NewData(d, []float64{0, 10, 10, 5})
	if got := D.View(); got[4] != 2 || got[2] != 1 || got[0] != 1 {
		Te.Errorf("the max should fall in the last bin, got %v", got)
	}
}

func TestHistoJSON(Te *testing.T) {
	D := NewData(EvenDividers(0, 4, 4), []float64{0.5, 1.5, 1.7, 3.9}, 7)
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("JSON:", string(j))
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if D2.ID() != 7 || !floats.Equal(D2.View(), D.View()) || !floats.Equal(D2.CopyDividers(), D.CopyDividers()) {
		Te.Errorf("histogram changed through JSON: %v", D2)
	}
	if err := json.Unmarshal([]byte(`{"dividers":[0,1],"histo":[1,2]}`), D2); err == nil {
		Te.Error("inconsistent JSON histogram should not be accepted")
	}
}
