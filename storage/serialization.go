// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/poiesic/moodshelf/core"
)

// MarshalBook serializes a Book to bytes.
func MarshalBook(book *core.Book) []byte {
	buf := make([]byte, core.BookMUS.Size(*book))
	core.BookMUS.Marshal(*book, buf)
	return buf
}

// UnmarshalBook deserializes a Book from bytes.
func UnmarshalBook(data []byte) (*core.Book, error) {
	book, _, err := core.BookMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: book: %v", ErrSerializationFailed, err)
	}
	return &book, nil
}

// MarshalKeyword serializes a KeywordRecord to bytes.
func MarshalKeyword(record *core.KeywordRecord) []byte {
	buf := make([]byte, core.KeywordRecordMUS.Size(*record))
	core.KeywordRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalKeyword deserializes a KeywordRecord from bytes. The stored
// Score is ignored and recomputed from the vote counters.
func UnmarshalKeyword(data []byte) (*core.KeywordRecord, error) {
	record, _, err := core.KeywordRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword: %v", ErrSerializationFailed, err)
	}
	record.Recompute()
	return &record, nil
}

// MarshalVote serializes a VoteRecord to bytes.
func MarshalVote(record *core.VoteRecord) []byte {
	buf := make([]byte, core.VoteRecordMUS.Size(*record))
	core.VoteRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalVote deserializes a VoteRecord from bytes.
func UnmarshalVote(data []byte) (*core.VoteRecord, error) {
	record, _, err := core.VoteRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vote: %v", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalClusterGroup serializes a ClusterGroup to bytes.
func MarshalClusterGroup(group *core.ClusterGroup) []byte {
	buf := make([]byte, core.ClusterGroupMUS.Size(*group))
	core.ClusterGroupMUS.Marshal(*group, buf)
	return buf
}

// UnmarshalClusterGroup deserializes a ClusterGroup from bytes.
func UnmarshalClusterGroup(data []byte) (*core.ClusterGroup, error) {
	group, _, err := core.ClusterGroupMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: cluster group: %v", ErrSerializationFailed, err)
	}
	return &group, nil
}

// MarshalVector encodes an embedding as little-endian float32s.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// UnmarshalVector decodes an embedding written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: vector length %d is not a multiple of 4", ErrSerializationFailed, len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
