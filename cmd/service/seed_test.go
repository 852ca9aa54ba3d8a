package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleCSV = `Company,Valuation ($B),Date Joined,Country,City,Industry,Select Investors
ByteDance,$225,4/7/2017,China,Beijing,Media & Entertainment,"Sequoia Capital China, SIG Asia Investments"
SpaceX,$150,12/1/2012,United States,Hawthorne,Industrials,"Founders Fund, Draper Fisher Jurvetson"
Stripe,$50,1/23/2014,United States,,Financial Services,"Khosla Ventures, LowercaseCapital"
`

func TestParseUnicornCSV(t *testing.T) {
	datas, err := ParseUnicornCSV(strings.NewReader(sampleCSV))
	assert.NoError(t, err)
	assert.Len(t, datas, 3)

	assert.Equal(t, "ByteDance", datas[0].Company)
	assert.Equal(t, 225.0, datas[0].Valuation)
	assert.Equal(t, 2017, datas[0].Date.Year())
	assert.Equal(t, "China", datas[0].Country)
	assert.NotNil(t, datas[0].City)
	assert.Equal(t, "Beijing", *datas[0].City)
	assert.Equal(t, "Media & Entertainment", datas[0].Industry)

	// empty city stays NULL
	assert.Nil(t, datas[2].City)
}

func TestParseUnicornCSVEmpty(t *testing.T) {
	datas, err := ParseUnicornCSV(strings.NewReader("Company,Valuation\n"))
	assert.NoError(t, err)
	assert.Empty(t, datas)
}

func TestParseUnicornCSVBadValuation(t *testing.T) {
	bad := "Company,Valuation,Date,Country,City,Industry,Investors\nAcme,not-a-number,1/1/2020,US,,tech,none\n"
	_, err := ParseUnicornCSV(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestParseUnicornCSVIsoDate(t *testing.T) {
	iso := "Company,Valuation,Date,Country,City,Industry,Investors\nAcme,$1.5,2020-06-15,United States,NYC,enterprise tech,none\n"
	datas, err := ParseUnicornCSV(strings.NewReader(iso))
	assert.NoError(t, err)
	assert.Len(t, datas, 1)
	assert.Equal(t, 1.5, datas[0].Valuation)
	assert.Equal(t, "2020-06-15", datas[0].Date.Format("2006-01-02"))
}
