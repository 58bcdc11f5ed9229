package script

import (
	"fmt"

	"github.com/StrathCole/oracle-script/pkg/obi"
)

// Schema is the OBI schema of the script's input and output.
const Schema = "{symbols:[string],minimum_source_count:u8}/{responses:[{symbol:string,response_code:u8,rate:u64}]}"

// EncodeInput encodes an input as OBI.
func EncodeInput(input Input) ([]byte, error) {
	enc := obi.NewEncoder()
	enc.Len(len(input.Symbols))
	for _, symbol := range input.Symbols {
		enc.String(symbol)
	}
	enc.U8(input.MinimumSourceCount)
	return enc.Bytes()
}

// DecodeInput decodes an OBI-encoded input.
func DecodeInput(data []byte) (Input, error) {
	dec := obi.NewDecoder(data)

	n := dec.Len()
	symbols := make([]string, 0, n)
	for i := 0; i < n && dec.Err() == nil; i++ {
		symbols = append(symbols, dec.String())
	}
	minimum := dec.U8()

	if err := dec.Finish(); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	return Input{Symbols: symbols, MinimumSourceCount: minimum}, nil
}

// EncodeOutput encodes an output as OBI.
func EncodeOutput(output Output) ([]byte, error) {
	enc := obi.NewEncoder()
	enc.Len(len(output.Responses))
	for _, r := range output.Responses {
		enc.String(r.Symbol)
		enc.U8(r.ResponseCode)
		enc.U64(r.Rate)
	}
	return enc.Bytes()
}

// DecodeOutput decodes an OBI-encoded output.
func DecodeOutput(data []byte) (Output, error) {
	dec := obi.NewDecoder(data)

	n := dec.Len()
	responses := make([]Response, 0, n)
	for i := 0; i < n && dec.Err() == nil; i++ {
		responses = append(responses, Response{
			Symbol:       dec.String(),
			ResponseCode: dec.U8(),
			Rate:         dec.U64(),
		})
	}

	if err := dec.Finish(); err != nil {
		return Output{}, fmt.Errorf("decode output: %w", err)
	}
	return Output{Responses: responses}, nil
}
