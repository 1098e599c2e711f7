package storage

import "github.com/imlabdb/imlabdb/internal/value"

// tableSpec is the declarative description of one fixed TPC-C relation:
// column names and types in declaration order, plus the primary key
// columns in the order the PK itself declares them (not necessarily column
// order). Grounded verbatim on original_source/src/gen/tpcc.cc and
// include/gen/tpcc.h.
type tableSpec struct {
	name       string
	columns    []string
	types      []value.Type
	primaryKey []string
}

var tpccSchema = []tableSpec{
	{
		name:    "warehouse",
		columns: []string{"w_id", "w_name", "w_street_1", "w_street_2", "w_city", "w_state", "w_zip", "w_tax", "w_ytd"},
		types: []value.Type{
			value.Integer(), value.Varchar(10), value.Varchar(20), value.Varchar(20), value.Varchar(20),
			value.Char(2), value.Char(9), value.Numeric(4, 4), value.Numeric(12, 2),
		},
		primaryKey: []string{"w_id"},
	},
	{
		name:    "district",
		columns: []string{"d_id", "d_w_id", "d_name", "d_street_1", "d_street_2", "d_city", "d_state", "d_zip", "d_tax", "d_ytd", "d_next_o_id"},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Varchar(10), value.Varchar(20), value.Varchar(20), value.Varchar(20),
			value.Char(2), value.Char(9), value.Numeric(4, 4), value.Numeric(12, 2), value.Integer(),
		},
		primaryKey: []string{"d_w_id", "d_id"},
	},
	{
		name: "customer",
		columns: []string{
			"c_id", "c_d_id", "c_w_id", "c_first", "c_middle", "c_last", "c_street_1", "c_street_2", "c_city",
			"c_state", "c_zip", "c_phone", "c_since", "c_credit", "c_credit_lim", "c_discount", "c_balance",
			"c_ytd_payment", "c_payment_cnt", "c_delivery_cnt", "c_data",
		},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Integer(), value.Varchar(16), value.Char(2), value.Varchar(16),
			value.Varchar(20), value.Varchar(20), value.Varchar(20), value.Char(2), value.Char(9), value.Char(16),
			value.Timestamp(), value.Char(2), value.Numeric(12, 2), value.Numeric(4, 4), value.Numeric(12, 2),
			value.Numeric(12, 2), value.Numeric(4, 0), value.Numeric(4, 0), value.Varchar(500),
		},
		primaryKey: []string{"c_w_id", "c_d_id", "c_id"},
	},
	{
		name:    "history",
		columns: []string{"h_c_id", "h_c_d_id", "h_c_w_id", "h_d_id", "h_w_id", "h_date", "h_amount", "h_data"},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Integer(), value.Integer(), value.Integer(),
			value.Timestamp(), value.Numeric(6, 2), value.Varchar(24),
		},
		primaryKey: nil,
	},
	{
		name:       "neworder",
		columns:    []string{"no_o_id", "no_d_id", "no_w_id"},
		types:      []value.Type{value.Integer(), value.Integer(), value.Integer()},
		primaryKey: []string{"no_w_id", "no_d_id", "no_o_id"},
	},
	{
		name:    "order",
		columns: []string{"o_id", "o_d_id", "o_w_id", "o_c_id", "o_entry_d", "o_carrier_id", "o_ol_cnt", "o_all_local"},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Integer(), value.Integer(), value.Timestamp(),
			value.Integer(), value.Numeric(2, 0), value.Numeric(1, 0),
		},
		primaryKey: []string{"o_w_id", "o_d_id", "o_id"},
	},
	{
		name: "orderline",
		columns: []string{
			"ol_o_id", "ol_d_id", "ol_w_id", "ol_number", "ol_i_id", "ol_supply_w_id",
			"ol_delivery_d", "ol_quantity", "ol_amount", "ol_dist_info",
		},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Integer(), value.Integer(), value.Integer(), value.Integer(),
			value.Timestamp(), value.Numeric(2, 0), value.Numeric(6, 2), value.Char(24),
		},
		primaryKey: []string{"ol_w_id", "ol_d_id", "ol_o_id", "ol_number"},
	},
	{
		name:       "item",
		columns:    []string{"i_id", "i_im_id", "i_name", "i_price", "i_data"},
		types:      []value.Type{value.Integer(), value.Integer(), value.Varchar(24), value.Numeric(5, 2), value.Varchar(50)},
		primaryKey: []string{"i_id"},
	},
	{
		name: "stock",
		columns: []string{
			"s_i_id", "s_w_id", "s_quantity", "s_dist_01", "s_dist_02", "s_dist_03", "s_dist_04", "s_dist_05",
			"s_dist_06", "s_dist_07", "s_dist_08", "s_dist_09", "s_dist_10", "s_ytd", "s_order_cnt",
			"s_remote_cnt", "s_data",
		},
		types: []value.Type{
			value.Integer(), value.Integer(), value.Numeric(4, 0), value.Char(24), value.Char(24), value.Char(24),
			value.Char(24), value.Char(24), value.Char(24), value.Char(24), value.Char(24), value.Char(24),
			value.Char(24), value.Numeric(8, 0), value.Numeric(4, 0), value.Numeric(4, 0), value.Varchar(50),
		},
		primaryKey: []string{"s_w_id", "s_i_id"},
	},
}

// NewTPCCDatabase builds an empty Database declaring all nine fixed TPC-C
// relations spec.md's CLI and end-to-end scenarios depend on.
func NewTPCCDatabase() *Database {
	db := NewDatabase()
	for _, spec := range tpccSchema {
		r := NewRelation(spec.name, spec.columns, spec.types)
		if len(spec.primaryKey) > 0 {
			if err := r.SetPrimaryKey(spec.primaryKey); err != nil {
				panic(err)
			}
		}
		db.Register(r)
	}
	return db
}

// TPCCRelationFileNames returns the nine tpcc_<relation>.tbl base names the
// database CLI loads at startup, in schema declaration order.
func TPCCRelationFileNames() []string {
	names := make([]string, len(tpccSchema))
	for i, spec := range tpccSchema {
		names[i] = "tpcc_" + spec.name + ".tbl"
	}
	return names
}
